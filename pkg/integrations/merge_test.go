package integrations

import (
	"testing"
	"time"
)

func TestMergeAllAvailableWhenNothingConnected(t *testing.T) {
	views := Merge(Catalog(), nil)
	if len(views) != 3 {
		t.Fatalf("expected 3 views, got %d", len(views))
	}
	for _, view := range views {
		if view.Status != StatusAvailable {
			t.Errorf("%s: expected %q, got %q", view.Id, StatusAvailable, view.Status)
		}
		if view.ConnectedAt != nil {
			t.Errorf("%s: expected nil connectedAt", view.Id)
		}
	}
}

func TestMergeSingleConnection(t *testing.T) {
	at := time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)
	views := Merge(Catalog(), []Connection{{Provider: ProviderNotion, ConnectedAt: at}})

	for _, view := range views {
		if view.Id == ProviderNotion {
			if view.Status != StatusConnected {
				t.Errorf("notion: expected connected, got %q", view.Status)
			}
			if view.ConnectedAt == nil || !view.ConnectedAt.Equal(at) {
				t.Errorf("notion: expected connectedAt %v, got %v", at, view.ConnectedAt)
			}
			continue
		}
		if view.Status != StatusAvailable {
			t.Errorf("%s: expected available, got %q", view.Id, view.Status)
		}
	}
}

func TestMergePreservesCatalogOrder(t *testing.T) {
	views := Merge(Catalog(), []Connection{
		{Provider: ProviderJira, ConnectedAt: time.Now()},
		{Provider: ProviderSlack, ConnectedAt: time.Now()},
	})
	want := []string{ProviderSlack, ProviderNotion, ProviderJira}
	for i, id := range want {
		if views[i].Id != id {
			t.Errorf("position %d: expected %s, got %s", i, id, views[i].Id)
		}
	}
}

func TestMergeFirstConnectionRowWins(t *testing.T) {
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)
	views := Merge(Catalog(), []Connection{
		{Provider: ProviderSlack, ConnectedAt: first},
		{Provider: ProviderSlack, ConnectedAt: second},
	})
	for _, view := range views {
		if view.Id != ProviderSlack {
			continue
		}
		if view.ConnectedAt == nil || !view.ConnectedAt.Equal(first) {
			t.Errorf("expected first row to win, got %v", view.ConnectedAt)
		}
	}
}
