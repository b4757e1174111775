package main

import (
	"log"
	"net/http"
	"os"

	"jokenpo/server/api"
	"jokenpo/server/lobby"
	"jokenpo/server/matchmaking"
	"jokenpo/server/network"
	"jokenpo/server/pubsub"
	"jokenpo/server/ranking"
)

func main() {
	log.Println("[MAIN] A iniciar o coordenador de partidas...")

	// 1. Configuração: porta dos jogadores por argumento posicional,
	// o resto por variáveis de ambiente.
	port := "5000"
	if len(os.Args) > 1 {
		port = os.Args[1]
	}
	tcpAddr := ":" + port
	apiAddr := getEnv("API_ADDR", ":8000")
	redisAddr := getEnv("REDIS_ADDR", "")

	// 2. Componentes centrais.
	broker := pubsub.NewBroker()
	rank := ranking.NewStore(redisAddr)
	waiting := lobby.NewLobby(broker)
	service := matchmaking.NewService(waiting, broker, rank)
	apiServer := api.NewServer(waiting, service, rank, broker)
	tcpServer := network.NewTCPServer(tcpAddr, waiting)

	// 3. Serviços de fundo.
	go func() {
		log.Printf("[MAIN] A iniciar API de observação em %s...", apiAddr)
		if err := http.ListenAndServe(apiAddr, apiServer.Router()); err != nil {
			log.Fatalf("[MAIN] Erro fatal na API: %v", err)
		}
	}()
	go service.Run()

	// 4. Servidor TCP dos jogadores (bloqueia a goroutine principal).
	log.Printf("[MAIN] A iniciar servidor TCP para jogadores em %s...", tcpAddr)
	if err := tcpServer.Listen(); err != nil {
		log.Fatalf("[MAIN] Erro fatal no servidor TCP: %v", err)
	}
}

// getEnv lê uma variável de ambiente ou devolve um valor padrão.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
