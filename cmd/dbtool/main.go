// Package main содержит точку входа обслуживающего CLI базы данных.
//
// Пакет отвечает за запуск консольной утилиты dbtool (миграции,
// загрузка справочников, полное удаление таблиц).
package main

import "github.com/vkotlyarenko/go-agro-registry/internal/dbtool"

func main() {
	dbtool.Execute()
}
