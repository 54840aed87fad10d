package money

import "testing"

func TestRunDeterminismSelfTestPasses(t *testing.T) {
	if err := RunDeterminismSelfTest(50); err != nil {
		t.Fatalf("determinism self-test failed on this host: %v", err)
	}
}
