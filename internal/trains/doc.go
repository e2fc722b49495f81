// Package trains keeps, filters, saves and loads train departure records.
//
// The trains file is a JSON array of objects with three string fields:
//
//	[
//	    {
//	        "название пункта назначения": "Москва",
//	        "номер поезда": "101",
//	        "время отправления": "08:00"
//	    }
//	]
//
// # Ordering
//
// A Registry is always sorted by destination. The sort is stable, so records
// with equal destinations keep their insertion order. Departure times are
// compared as strings, which is correct for zero-padded HH:MM values only.
//
// # Validation
//
// When a Store is created with validation enabled, every loaded document is
// checked against a JSON Schema (draft 2020-12) before any record is accepted.
// The bundled schema requires all three fields and a departure time matching
// ^\d{2}:\d{2}$. A custom schema file can replace it.
//
// # File Format
//
// When writing trains files, the package uses:
//   - 4-space indentation
//   - Literal UTF-8 (no \u escapes for non-ASCII or HTML characters)
//   - Trailing newline
package trains
