package ranking

import (
	"context"
	"testing"
)

// TestDisabledStoreIsNoOp: sem REDIS_ADDR a store aceita todas as chamadas
// sem erro e sem Redis — o coordenador precisa funcionar sem placar.
func TestDisabledStoreIsNoOp(t *testing.T) {
	s := NewStore("")

	if s.Enabled() {
		t.Fatal("store sem endereço deveria estar desabilitada")
	}

	ctx := context.Background()
	if err := s.RegisterWin(ctx, "Alice"); err != nil {
		t.Errorf("RegisterWin em store desabilitada não deveria falhar: %v", err)
	}
	if err := s.RegisterMatch(ctx); err != nil {
		t.Errorf("RegisterMatch em store desabilitada não deveria falhar: %v", err)
	}
	entries, err := s.Top(ctx, 10)
	if err != nil || entries != nil {
		t.Errorf("Top em store desabilitada deveria devolver vazio sem erro")
	}

	t.Log("✓ Ranking: store desabilitada é no-op seguro")
}
