package main

import "sitewatch/internal/app/server"

func main() {
	server.Run()
}
