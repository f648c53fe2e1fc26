// Package migrations содержит SQL-схему хранилища упражнений
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
