// Утилитарные функции общего назначения
package utils

// StrPtr возвращает указатель на строку: удобно для опциональных
// полей вроде address/phone, где nil означает "не задано".
func StrPtr(s string) *string {
	return &s
}
