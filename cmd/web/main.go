package main

import "marketsafe_backend/internal/app"

func main() {
	app.Run()
}
