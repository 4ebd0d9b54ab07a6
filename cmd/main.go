package main

import (
	"github.com/nadeesha208/restosaas/internal/app"
	"github.com/nadeesha208/restosaas/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
