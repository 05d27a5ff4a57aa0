// Package cmd contains the command-line utilities for incomegroup. income_report prints the clustered dataset and
// its income groups, income_group answers a single query, income_dashboard serves the web dashboard, and income_rpc
// serves the same queries over net/rpc.
package cmd
