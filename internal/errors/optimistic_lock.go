package errors

// ErrOptimisticLock reports a row that changed between read and write.
var ErrOptimisticLock = Conflict("the record was modified concurrently, please retry")
