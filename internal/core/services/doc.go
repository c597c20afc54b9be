// Package services implements the driving ports: the ingestion pipeline
// and the query path. Services depend only on domain types and driven
// ports; all infrastructure reaches them through interfaces.
package services
