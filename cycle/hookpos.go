package cycle

import "github.com/sarchlab/pentagon/hooking"

// HookPosSnapshot fires after a snapshot is emitted. The item is a
// lights.Snapshot.
var HookPosSnapshot = &hooking.HookPos{Name: "Snapshot"}

// HookPosPhase fires when the engine enters a phase. The item is a
// PhaseEvent.
var HookPosPhase = &hooking.HookPos{Name: "Phase"}

// HookPosAdmin fires after an administrative line is logged. The item is the
// line and the detail is its position in the event log, as an int. Admin
// lines come from several goroutines and hooks may see them out of order;
// the position gives the order of the log.
var HookPosAdmin = &hooking.HookPos{Name: "Admin"}

// HookPosHardware fires when a physical controller reports its lamps. The
// item is a lights.Snapshot.
var HookPosHardware = &hooking.HookPos{Name: "Hardware"}
