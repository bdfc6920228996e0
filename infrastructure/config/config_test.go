package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/machinecoin-project/machinecoin-core/domain/chaincfg"
)

func TestLoadConfigNetworks(t *testing.T) {
	tests := []struct {
		name            string
		args            []string
		expectedNetwork string
		expectError     bool
	}{
		{name: "default", args: nil, expectedNetwork: "mainnet"},
		{name: "testnet", args: []string{"--testnet"}, expectedNetwork: "testnet"},
		{name: "regtest", args: []string{"--regtest"}, expectedNetwork: "regtest"},
		{name: "two networks", args: []string{"--testnet", "--regtest"}, expectError: true},
		{name: "vbparams on mainnet", args: []string{"--vbparams=csv:1:2"}, expectError: true},
		{name: "malformed vbparams", args: []string{"--regtest", "--vbparams=csv:1"}, expectError: true},
		{name: "unknown deployment", args: []string{"--regtest", "--vbparams=nope:1:2"}, expectError: true},
		{name: "stray argument", args: []string{"--regtest", "stray"}, expectError: true},
	}

	for _, test := range tests {
		args := append([]string{"--configfile=" + filepath.Join(t.TempDir(), "missing.conf")}, test.args...)
		cfg, err := loadConfig(args)
		if test.expectError {
			if err == nil {
				t.Errorf("TestLoadConfigNetworks: %s: loadConfig unexpectedly succeeded", test.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("TestLoadConfigNetworks: %s: loadConfig unexpectedly failed: %s", test.name, err)
			continue
		}
		if cfg.NetParams().Name != test.expectedNetwork {
			t.Errorf("TestLoadConfigNetworks: %s: got network %s, want %s",
				test.name, cfg.NetParams().Name, test.expectedNetwork)
		}
		if filepath.Base(cfg.DataDir) != test.expectedNetwork || filepath.Base(cfg.LogDir) != test.expectedNetwork {
			t.Errorf("TestLoadConfigNetworks: %s: directories %s and %s are not namespaced by network",
				test.name, cfg.DataDir, cfg.LogDir)
		}
	}
}

func TestLoadConfigVBParams(t *testing.T) {
	cfg, err := loadConfig([]string{
		"--configfile=" + filepath.Join(t.TempDir(), "missing.conf"),
		"--regtest",
		"--vbparams=csv:1000:2000",
	})
	if err != nil {
		t.Fatalf("TestLoadConfigVBParams: loadConfig unexpectedly failed: %s", err)
	}

	index, ok := chaincfg.DeploymentByName("csv")
	if !ok {
		t.Fatalf("TestLoadConfigVBParams: csv deployment is not defined")
	}
	deployment := cfg.NetParams().Deployments[index]
	if deployment.StartTime != 1000 || deployment.ExpireTime != 2000 {
		t.Errorf("TestLoadConfigVBParams: got window %d-%d, want 1000-2000",
			deployment.StartTime, deployment.ExpireTime)
	}

	// The registered network parameters stay untouched.
	if chaincfg.RegressionNetParams.Deployments[index].StartTime == 1000 {
		t.Errorf("TestLoadConfigVBParams: the override leaked into the registered parameters")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "machinecoind.conf")
	contents := "testnet=1\nlitemode=1\ndebuglevel=debug\ndatadir=" + filepath.Join(dir, "data") + "\n"
	err := ioutil.WriteFile(configFile, []byte(contents), 0600)
	if err != nil {
		t.Fatalf("TestLoadConfigFile: WriteFile unexpectedly failed: %s", err)
	}

	cfg, err := loadConfig([]string{"--configfile=" + configFile, "--debuglevel=trace"})
	if err != nil {
		t.Fatalf("TestLoadConfigFile: loadConfig unexpectedly failed: %s", err)
	}
	if cfg.NetParams().Name != "testnet" || !cfg.LiteMode {
		t.Errorf("TestLoadConfigFile: the config file was not applied")
	}
	if cfg.DebugLevel != "trace" {
		t.Errorf("TestLoadConfigFile: command line debuglevel %s doesn't take precedence", cfg.DebugLevel)
	}
	if cfg.DataDir != filepath.Join(dir, "data", "testnet") {
		t.Errorf("TestLoadConfigFile: got data dir %s", cfg.DataDir)
	}
}
