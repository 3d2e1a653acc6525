package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNew 测试分页器创建时的页大小校验
func TestNew(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)

	_, err = New(-3)
	assert.Error(t, err)

	p, err := New(10)
	assert.NoError(t, err)
	assert.Equal(t, 10, p.PageSize())
}

// TestSlice 测试 13 条数据按每页 10 条切分
func TestSlice(t *testing.T) {
	p, _ := New(10)

	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}

	// 第一页 10 条，存在下一页
	page1 := Slice(p, items, 1)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, 1, page1.Number)
	assert.Equal(t, 13, page1.TotalItems)
	assert.Equal(t, 2, page1.TotalPages)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrev)

	// 第二页 3 条，没有下一页
	page2 := Slice(p, items, 2)
	assert.Len(t, page2.Items, 3)
	assert.False(t, page2.HasNext)
	assert.True(t, page2.HasPrev)

	// 越界页码收敛到最后一页，结果与第二页一致
	page99 := Slice(p, items, 99)
	assert.Equal(t, page2.Number, page99.Number)
	assert.Equal(t, page2.Items, page99.Items)
	assert.False(t, page99.HasNext)

	// 页码小于 1 收敛到第一页
	page0 := Slice(p, items, 0)
	assert.Equal(t, 1, page0.Number)
	assert.Equal(t, page1.Items, page0.Items)
}

// TestSliceEmpty 测试空集合
func TestSliceEmpty(t *testing.T) {
	p, _ := New(10)

	page := Slice(p, []int{}, 5)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

// TestSliceKeepsOrder 分页器不得重排输入
func TestSliceKeepsOrder(t *testing.T) {
	p, _ := New(3)

	items := []string{"e", "c", "a", "d", "b"}
	page := Slice(p, items, 1)
	assert.Equal(t, []string{"e", "c", "a"}, page.Items)
}

// TestWindow 测试 SQL 偏移量计算
func TestWindow(t *testing.T) {
	p, _ := New(10)

	number, offset := p.Window(13, 1)
	assert.Equal(t, 1, number)
	assert.Equal(t, 0, offset)

	number, offset = p.Window(13, 2)
	assert.Equal(t, 2, number)
	assert.Equal(t, 10, offset)

	// 越界收敛
	number, offset = p.Window(13, 99)
	assert.Equal(t, 2, number)
	assert.Equal(t, 10, offset)

	number, offset = p.Window(0, 7)
	assert.Equal(t, 1, number)
	assert.Equal(t, 0, offset)
}
