package main

import "compeval/internal/app/server"

func main() {
	server.Run()
}
