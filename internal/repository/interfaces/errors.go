package interfaces

import "errors"

// ErrDuplicate 表示写入违反了存储层唯一约束
var ErrDuplicate = errors.New("duplicate entry")
