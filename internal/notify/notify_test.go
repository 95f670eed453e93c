package notify

import (
	"testing"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

func TestCatalogForMatchesSupportedLocales(t *testing.T) {
	tests := []struct {
		name      string
		preferred []string
		want      string
	}{
		{name: "exact english", preferred: []string{"en-US"}, want: "en-US"},
		{name: "base english", preferred: []string{"en"}, want: "en-US"},
		{name: "brazilian portuguese", preferred: []string{"pt-BR"}, want: "pt-BR"},
		{name: "european portuguese falls to brazilian", preferred: []string{"pt-PT"}, want: "pt-BR"},
		{name: "unsupported falls to base", preferred: []string{"ja-JP"}, want: "en-US"},
		{name: "garbage skipped", preferred: []string{"not a locale", "pt-BR"}, want: "pt-BR"},
		{name: "empty", preferred: nil, want: "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CatalogFor(tt.preferred...)
			if got.Locale() != tt.want {
				t.Fatalf("expected locale %q, got %q", tt.want, got.Locale())
			}
		})
	}
}

func TestCatalogFormatRendersMetadata(t *testing.T) {
	catalog := CatalogFor("en-US")

	got := catalog.Format(apperrors.CodeResourceExhausted, map[string]string{"Name": "Bardic Inspiration"})
	if got != "Bardic Inspiration has no uses remaining" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestCatalogFormatFallsBackToCode(t *testing.T) {
	catalog := NewCatalog(CatalogFor("en-US").tag, nil)

	if got := catalog.Format(apperrors.CodeOffline, nil); got != string(apperrors.CodeOffline) {
		t.Fatalf("expected raw code fallback, got %q", got)
	}
}

func TestCatalogFormatNilMetadata(t *testing.T) {
	catalog := CatalogFor("en-US")

	got := catalog.Format(apperrors.CodeResourceExhausted, nil)
	if got != " has no uses remaining" {
		t.Fatalf("expected empty placeholder rendering, got %q", got)
	}
}

func TestToasterFailureLocalizesError(t *testing.T) {
	var captured []Message
	toaster := NewToaster(CatalogFor("pt-BR"), Func(func(msg Message) {
		captured = append(captured, msg)
	}))

	toaster.Failure(apperrors.New(apperrors.CodeOffline, "offline"))

	if len(captured) != 1 {
		t.Fatalf("expected 1 message, got %d", len(captured))
	}
	msg := captured[0]
	if msg.Severity != SeverityError {
		t.Fatalf("expected error severity, got %q", msg.Severity)
	}
	if msg.Code != apperrors.CodeOffline {
		t.Fatalf("expected offline code, got %q", msg.Code)
	}
	if msg.Text != "Você está offline; as alterações não foram salvas" {
		t.Fatalf("unexpected localized text: %q", msg.Text)
	}
}

func TestToasterFailureIgnoresNil(t *testing.T) {
	calls := 0
	toaster := NewToaster(nil, Func(func(Message) { calls++ }))

	toaster.Failure(nil)
	if calls != 0 {
		t.Fatalf("expected no messages for nil error, got %d", calls)
	}
}

func TestToasterInfo(t *testing.T) {
	var captured []Message
	toaster := NewToaster(nil, Func(func(msg Message) {
		captured = append(captured, msg)
	}))

	toaster.Info("synced")

	if len(captured) != 1 || captured[0].Severity != SeverityInfo || captured[0].Text != "synced" {
		t.Fatalf("unexpected messages: %+v", captured)
	}
}
