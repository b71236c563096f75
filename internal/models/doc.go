// Package models defines the core domain models for the society ledger.
//
// # Entities
//
//   - Resident: a unit owner in the roster, keyed by flat number
//   - Sheet: a monthly expense sheet holding collections and expenses
//   - Collection: one resident's maintenance payment for one sheet
//   - Expense: money spent out of a sheet
//   - MonthlySummary: a manually entered monthly rollup, independent of sheets
//   - User: the administrator account used to sign in
//
// # Conventions
//
// 1. Amounts are decimal.Decimal rounded to two places (see RoundCurrency)
// 2. Relationships use ID strings, never pointers
// 3. Flat numbers are matched after NormalizeFlatNo, never raw
// 4. Sheet lifecycle is a SheetState with an explicit transition table
package models
