package pagination

import "fmt"

// Page 表示有序集合中的一页及其元数据
type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginator 将调用方已排好序的集合切分为固定大小的页。
// 不会修改或重排输入；页码从 1 开始，越界页码收敛到最近的合法页。
type Paginator struct {
	pageSize int
}

// New 创建分页器。页大小是启动期配置，非法值在这里拒绝而不是每次请求时处理
func New(pageSize int) (*Paginator, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("非法的页大小: %d", pageSize)
	}
	return &Paginator{pageSize: pageSize}, nil
}

// PageSize 返回固定页大小
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// TotalPages 计算总页数，空集合视为 1 页
func (p *Paginator) TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + p.pageSize - 1) / p.pageSize
}

// Clamp 将请求页码收敛到 [1, 总页数] 区间
func (p *Paginator) Clamp(total, page int) int {
	if page < 1 {
		return 1
	}
	if last := p.TotalPages(total); page > last {
		return last
	}
	return page
}

// Window 返回收敛后的页码与对应的 SQL 偏移量
func (p *Paginator) Window(total, page int) (int, int) {
	number := p.Clamp(total, page)
	return number, (number - 1) * p.pageSize
}

// Wrap 用一页已查询好的数据和总数构造 Page 元数据
func Wrap[T any](p *Paginator, items []T, total, page int) *Page[T] {
	number := p.Clamp(total, page)
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		Number:     number,
		PageSize:   p.pageSize,
		TotalItems: total,
		TotalPages: p.TotalPages(total),
		HasNext:    number < p.TotalPages(total),
		HasPrev:    number > 1,
	}
}

// Slice 对内存中的有序切片取一页
func Slice[T any](p *Paginator, items []T, page int) *Page[T] {
	total := len(items)
	number, offset := p.Window(total, page)

	end := offset + p.pageSize
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}
	return Wrap(p, items[offset:end], total, number)
}
