package services

// LockCount reports how many sessions currently have a lock entry
func (s *SessionService) LockCount() int {
	n := 0
	s.locks.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
