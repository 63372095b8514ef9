// # internal/server/openapi_test.go
package server

import "testing"

func TestLoadContract(t *testing.T) {
	doc, err := LoadContract("../../api/openapi.yaml")
	if err != nil {
		t.Fatalf("LoadContract: %v", err)
	}
	if doc.Paths.Find("/api/v1/symbols/{name}/usages") == nil {
		t.Error("contract missing symbol usages path")
	}
}

func TestLoadContractMissing(t *testing.T) {
	if _, err := LoadContract("does-not-exist.yaml"); err == nil {
		t.Error("expected error for missing contract")
	}
	if _, err := LoadContract("  "); err == nil {
		t.Error("expected error for empty path")
	}
}
