// zap wiring helpers shared by the writer and re-indexer.
package crawdb

import "time"

// lockAndLog acquires h's exclusive advisory lock, logging at Info if
// the wait exceeded Config.LockWaitLog and at Debug otherwise.
func (h *Handle) lockAndLog(site string) error {
	waited, err := h.lock.Lock()
	if err != nil {
		h.log.Errorw("lock failed", "site", site, "path", h.idxPath, "err", err)
		return newErrPath(CodeLockEx, site, h.idxPath, err)
	}
	if waited >= h.config.LockWaitLog {
		h.log.Infow("lock acquired after wait", "site", site, "waited", waited.Round(time.Millisecond))
	} else {
		h.log.Debugw("lock acquired", "site", site)
	}
	return nil
}

// unlockAndLog releases h's exclusive advisory lock, logging any error
// at Error since a failed unlock can wedge every other process sharing
// this INDEX file.
func (h *Handle) unlockAndLog(site string) error {
	if err := h.lock.Unlock(); err != nil {
		h.log.Errorw("unlock failed", "site", site, "path", h.idxPath, "err", err)
		return newErrPath(CodeLockUn, site, h.idxPath, err)
	}
	h.log.Debugw("lock released", "site", site)
	return nil
}
