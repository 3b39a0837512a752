// Command receipts prints the most recent executed operations from a bank
// operations export as masked console receipts.
//
// Usage:
//
//	receipts [-source path] [-base-dir dir] [-count n] [-color auto|always|never]
//	         [-log-level level] [-metrics-file path]
//
// Every flag can also be set through the environment or a .env file:
// RECEIPTS_SOURCE, RECEIPTS_BASE_DIR, RECEIPTS_COUNT, RECEIPTS_REQUIRED_KEYS,
// RECEIPTS_COLOR, LOG_LEVEL, LOG_FORMAT and METRICS_TEXTFILE.
package main
