package main

import "workboard/internal/app"

// @title           workboard API
// @version         1.0
// @description     Client/task board backend: clients, kanban tasks, payment tracking.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in              header
// @name            Authorization
func main() {
	app.Run()
}
