package main

import "github.com/bidhaus/auction-backend/internal/app"

//	@title			Auction Backend API
//	@version		1.0
//	@description	REST API аукционной площадки: лоты, ставки, оценки, репутация продавцов.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization

func main() {
	app.Run()
}
