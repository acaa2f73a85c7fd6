package main

import (
	"github.com/kittiBank/order-manage-web/internal/app"
	"github.com/kittiBank/order-manage-web/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
