// Package fuzztests houses Go fuzz harnesses for the scanner and the
// formatter. They guard against panics on arbitrary input and check the
// round-trip properties on everything that formats.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
