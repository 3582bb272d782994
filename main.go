// Command salesfx runs the orders ETL pipeline: it loads a local orders
// table, enriches each order with the historical conversion rate of its
// month, aggregates monthly sales totals and writes the report files.
//
// Usage:
//
//	salesfx run --config config.yaml
//	salesfx run (uses built-in defaults)
//
// Optional environment variables:
//
//	SALESFX_RATES_API_KEY - access key for the rates API
//	SALESFX_INPUT, SALESFX_OUTPUT_DIR, SALESFX_S3_BUCKET - config overrides
package main

import "github.com/vadiminshakov/salesfx/cmd"

func main() {
	cmd.Execute()
}
