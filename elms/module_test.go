package elms

import (
	"testing"

	"github.com/elmscz/elms-client/internal/config"
)

func TestNewServiceUsesConfig(t *testing.T) {
	cfg := &config.Config{
		OrderSourceCode: "shop1",
		DebugMode:       true,
		DeliveryCodes:   []string{"courier_x"},
	}
	svc := newService(serviceParams{Config: cfg, Sender: &senderStub{}, Logger: testLogger()})
	if svc == nil {
		t.Fatal("expected service instance")
	}
	if svc.source != "shop1" || !svc.debug {
		t.Errorf("settings not applied: source=%q debug=%v", svc.source, svc.debug)
	}
	if _, ok := svc.deliveryCodes["courier_x"]; !ok {
		t.Error("expected configured delivery code to be allowed")
	}
	if _, ok := svc.deliveryCodes[DeliveryCPost]; ok {
		t.Error("expected default codes to be replaced by configuration")
	}
}

func TestNewServiceFallsBackToDefaultDeliveryCodes(t *testing.T) {
	svc := NewService(Settings{Source: "shop1"}, &senderStub{}, testLogger())
	for _, code := range DefaultDeliveryCodes() {
		if _, ok := svc.deliveryCodes[code]; !ok {
			t.Errorf("expected default delivery code %q to be allowed", code)
		}
	}
}
