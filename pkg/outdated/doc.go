// Package outdated obtains and interprets the package manager's outdated report.
//
// The report is the table printed by `yarn outdated`:
//
//	Package Current Wanted Latest Workspace Package Type URL
//	foo     1.0.0   1.1.0  2.0.0  pkg-a     dependencies https://...
//	Done in 0.42s.
//
// Runner executes the command and classifies its outcome as a Report;
// ParseReport turns the table body into Rows; NewVersion and WantsUpdate
// decide what each row should be bumped to.
package outdated
