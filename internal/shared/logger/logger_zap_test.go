package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vkotlyarenko/go-agro-registry/internal/shared/logger"
)

func TestNewHTTPLogger(t *testing.T) {
	// логгер пишет в runtime/logs относительно cwd, уводим в tempdir
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	log := logger.NewHTTPLogger()
	if log == nil || log.Logger == nil {
		t.Fatalf("expected non-nil logger")
	}

	log.LogRequest("GET", "/users", 200, 42, 1.5)
	if err := log.Sync(); err != nil {
		// Sync на файле может вернуть ошибку на некоторых ФС, это не важно
		t.Logf("sync: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmp, "runtime", "logs", "http.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected log output")
	}
}
