package disk

// PAGE_SIZE is the fixed byte size of every page petrodb reads or writes.
const PAGE_SIZE = 4096

// INVALID_PAGE_ID is the sentinel returned when no page id is available.
const INVALID_PAGE_ID int64 = -1

// DEFAULT_PAGE_CAPACITY is the number of pages a freshly created db file
// holds before it needs to grow.
const DEFAULT_PAGE_CAPACITY = 16
