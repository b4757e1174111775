package ranking

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Chaves usadas no Redis.
const (
	rankingKey = "jokenpo:ranking"
	matchesKey = "jokenpo:partidas"
)

// Entry é uma posição do placar: jogador e vitórias acumuladas.
type Entry struct {
	Player string  `json:"player"`
	Wins   float64 `json:"wins"`
}

// Store mantém o placar agregado de vitórias num sorted set do Redis.
// Sem REDIS_ADDR configurado a store fica desabilitada e todos os métodos
// viram no-op: o coordenador funciona normalmente sem Redis.
type Store struct {
	client *redis.Client
}

// NewStore cria a store. Endereço vazio desabilita o placar.
func NewStore(addr string) *Store {
	if addr == "" {
		log.Println("[RANKING] REDIS_ADDR não definido. Placar desabilitado.")
		return &Store{}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
	})
	log.Printf("[RANKING] Placar habilitado via Redis em %s", addr)
	return &Store{client: rdb}
}

// Enabled informa se há um Redis por trás da store.
func (s *Store) Enabled() bool {
	return s.client != nil
}

// RegisterWin incrementa as vitórias do jogador no placar.
func (s *Store) RegisterWin(ctx context.Context, player string) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.ZIncrBy(ctx, rankingKey, 1, player).Err()
}

// RegisterMatch incrementa o contador global de partidas concluídas.
func (s *Store) RegisterMatch(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Incr(ctx, matchesKey).Err()
}

// Top devolve as n primeiras posições do placar, da maior para a menor.
func (s *Store) Top(ctx context.Context, n int) ([]Entry, error) {
	if !s.Enabled() {
		return nil, nil
	}
	zs, err := s.client.ZRevRangeWithScores(ctx, rankingKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		name, _ := z.Member.(string)
		entries = append(entries, Entry{Player: name, Wins: z.Score})
	}
	return entries, nil
}
