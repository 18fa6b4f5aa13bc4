package main

import "profix/internal/app"

// @title        ProFix API
// @version      1.0
// @description  Бэкенд сайта услуг ProFix: каталог, заявки, кабинет PM, админка.
// @BasePath     /
func main() {
	app.Run()
}
