package main

import "github.com/adanyl0v/nonbon/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.InitFocusService()

	app.MustListenAndServeHTTP()
}
