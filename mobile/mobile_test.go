package mobile

import "testing"

func TestStartStop(t *testing.T) {
	StartServer(t.TempDir(), "0")
	StartServer(t.TempDir(), "0") // 已在运行，忽略
	if running == nil {
		t.Fatal("server not started")
	}
	StopServer()
	StopServer()
	if running != nil {
		t.Fatal("server not stopped")
	}
}
