package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"

	"zlkdex/internal/testutil"
)

func TestLoadConfigDefault(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	viper.Reset()

	if err := os.Chdir(".."); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	if err := os.Chdir(".."); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	if _, err := Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if AppConfig.Network.ID != "zlkdex-devnet" {
		t.Fatalf("unexpected network id: %s", AppConfig.Network.ID)
	}
}

func TestLoadConfigOverride(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	viper.Reset()

	if err := os.Chdir(".."); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	if err := os.Chdir(".."); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	if _, err := Load("production"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if AppConfig.Ledger.ExistentialDeposit != 1 {
		t.Fatalf("expected existential_deposit 1, got %d", AppConfig.Ledger.ExistentialDeposit)
	}
	if AppConfig.Logging.Level != "warn" {
		t.Fatalf("expected logging level warn, got %s", AppConfig.Logging.Level)
	}
}

func TestLoadConfigSandbox(t *testing.T) {
	sb, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("NewSandbox failed: %v", err)
	}
	defer sb.Cleanup()

	if err := os.Mkdir(sb.Path("config"), 0o700); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	data := []byte("network:\n  id: sandbox\n")
	if err := sb.WriteFile("config/default.yaml", data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	viper.Reset()

	if err := os.Chdir(sb.Root); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	if _, err := Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if AppConfig.Network.ID != "sandbox" {
		t.Fatalf("expected network id sandbox, got %s", AppConfig.Network.ID)
	}
}
