// Package sanitizer normalizes caller-supplied identifiers before
// validation and persistence.
package sanitizer

import "strings"

// SanitizePlate canonicalizes a vehicle plate: trims surrounding
// whitespace, uppercases, and strips internal spaces and dashes so
// "ka-01 ab 1234" and "KA01AB1234" identify the same vehicle.
func SanitizePlate(plate string) string {
	plate = strings.TrimSpace(plate)
	plate = strings.ToUpper(plate)
	plate = strings.ReplaceAll(plate, " ", "")
	plate = strings.ReplaceAll(plate, "-", "")
	return plate
}
