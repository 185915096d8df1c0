package main

import (
	"fmt"
	"os"
	"os/exec"
)

func main() {
	fmt.Println("Инициализация базы данных...")

	// применяем миграции перед стартом сервера
	migrate := exec.Command("go", "run", "./cmd/dbtool", "migrate")
	migrate.Stdout = os.Stdout
	migrate.Stderr = os.Stderr
	if err := migrate.Run(); err != nil {
		fmt.Printf("Ошибка миграций: %v\n", err)
		return
	}

	fmt.Println("Запуск сервера...")

	server := exec.Command("go", "run", "./cmd/server/main.go")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	fmt.Println("Сервер запущен")
	server.Wait()
}
