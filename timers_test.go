package main

import "testing"

func TestTimerReloadsAndOutputResetsOnRead(t *testing.T) {
	var cycles uint64
	timer := NewTimer(0, func() uint64 { return cycles })

	timer.setDivider(4)
	timer.setEnabled(true)

	cycles = 1024 // 1024/256 = 4 period advances -> lowerCount wraps at divider 4
	timer.tick()

	requireEqualU8(t, "upperCount before read", timer.upperCount, 1)
	out := timer.readOutput()
	requireEqualU8(t, "first readOutput", out, 1)
	requireEqualU8(t, "upperCount after read", timer.upperCount, 0)
}

func TestTimerDisabledNeverTicks(t *testing.T) {
	var cycles uint64
	timer := NewTimer(1, func() uint64 { return cycles })
	timer.setDivider(1)
	cycles = 100000
	timer.tick()
	requireEqualU8(t, "upperCount", timer.upperCount, 0)
}

func TestTimerZeroDividerTreatedAs256(t *testing.T) {
	var cycles uint64
	timer := NewTimer(2, func() uint64 { return cycles })
	timer.setDivider(0)
	timer.setEnabled(true)

	cycles = 32 * 256
	timer.tick()
	requireEqualU8(t, "upperCount", timer.upperCount, 1)
}

func TestTimerUpperCountWrapsAt16(t *testing.T) {
	var cycles uint64
	timer := NewTimer(2, func() uint64 { return cycles })
	timer.setDivider(1)
	timer.setEnabled(true)

	cycles = 32 * 16
	timer.tick()
	requireEqualU8(t, "upperCount", timer.upperCount, 0)
}

func TestTimerEnableResetsCounters(t *testing.T) {
	var cycles uint64
	timer := NewTimer(0, func() uint64 { return cycles })
	timer.setDivider(2)
	timer.setEnabled(true)
	cycles = 512
	timer.tick()

	timer.setEnabled(false)
	requireEqualU8(t, "lowerCount after disable", timer.lowerCount, 0)
	requireEqualU8(t, "upperCount after disable", timer.upperCount, 0)

	timer.setEnabled(true)
	requireEqualU8(t, "lowerCount after re-enable", timer.lowerCount, 0)
}
