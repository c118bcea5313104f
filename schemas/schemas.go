// Package schemas embeds the JSON Schemas for the rules file and answer sheets.
package schemas

import _ "embed"

//go:embed rules.schema.json
var RulesSchemaJSON string

//go:embed sheet.schema.json
var SheetSchemaJSON string
