package backplane

import (
	"fmt"
	"unsafe"
)

// DeviceID opaquely and uniquely identifies a live Device. It is realised
// as the numeric address of the Device's backing plugboard, which is kept
// alive by every Line and by the Device itself for as long as any DeviceID
// derived from it might still be compared — so the address cannot be
// reused by the allocator out from under a live comparison.
//
// DeviceID is totally ordered and cheaply hashable, making it suitable as
// a map key.
type DeviceID uintptr

// String renders the DeviceID as a hex address, for logs and debug output.
func (id DeviceID) String() string {
	return fmt.Sprintf("device<%#x>", uintptr(id))
}

func deviceIDOf(p *plugboard) DeviceID {
	return DeviceID(uintptr(unsafe.Pointer(p)))
}
