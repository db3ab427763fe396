// Утилита для генерации ADMIN_PASSWORD_HASH.
// Запуск: go run ./app/hashpassword <пароль>
package main

import (
	"fmt"
	"log"
	"os"

	"nfc-store/pkg/utils"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Использование: hashpassword <пароль>")
	}

	hash, err := utils.HashPassword(os.Args[1])
	if err != nil {
		log.Fatalf("Ошибка при генерации хеша: %v", err)
	}

	fmt.Println(hash)
}
