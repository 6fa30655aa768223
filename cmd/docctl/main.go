package main

import (
	"log"
	"os"

	"github.com/jhoicas/commercial-docs/cmd/docctl/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// .env opcional; las variables ya exportadas tienen prioridad
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("aviso: no se pudo leer .env: %v", err)
	}

	os.Exit(cmd.Execute())
}
