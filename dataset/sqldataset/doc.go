/*
Package sqldataset reads datasets from and writes them to SQL database
tables.

A dataset is kept in a single table with one TEXT column per dataset
column, named after the header. NULL cells are read as missing values,
and rows holding any missing value are dropped when reading, like the
CSV reader does.

The database specifics are hidden behind the Adapter interface, with
implementations for SQLite3 (sqlite3adapter) and PostgreSQL (pgadapter).
*/
package sqldataset
