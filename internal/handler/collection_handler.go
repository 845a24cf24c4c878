package handler

import (
	"context"
	"net/http"

	"github.com/advisorsite/internal/service"
	"github.com/gin-gonic/gin"
)

// reorderPayload 支持两种拖拽提交方式：
// movedId/overId 表示把 movedId 放到 overId 的位置，ids 表示完整的新顺序。
type reorderPayload struct {
	MovedID uint   `json:"movedId"`
	OverID  uint   `json:"overId"`
	IDs     []uint `json:"ids"`
}

type deleter interface {
	Delete(ctx context.Context, id uint) error
}

// listItems 返回缓存中的列表，同时带上加载状态与最近一次错误。
func listItems[T service.Entity](c *gin.Context, coll *service.Collection[T]) {
	if err := coll.EnsureLoaded(c.Request.Context()); err != nil {
		respondServiceError(c, err, "failed to load "+coll.Entity())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     coll.Snapshot(),
		"loading":   coll.Loading(),
		"lastError": coll.LastError(),
	})
}

func getItem[T service.Entity](c *gin.Context, coll *service.Collection[T]) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := coll.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to load "+coll.Entity())
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func deleteItem(c *gin.Context, target deleter, entity string) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := target.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete "+entity)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": entity + " deleted"})
}

// reorderItems 处理拖拽排序。未发生变化时不写库，changed 为 false。
func reorderItems[T service.Orderable[T]](c *gin.Context, coll *service.OrderedCollection[T]) {
	var payload reorderPayload
	if !bindJSON(c, &payload, "invalid reorder request") {
		return
	}

	ctx := c.Request.Context()
	var (
		changed bool
		err     error
	)
	switch {
	case len(payload.IDs) > 0:
		changed, err = coll.ApplyOrder(ctx, payload.IDs)
	case payload.MovedID != 0 && payload.OverID != 0:
		changed, err = coll.Reorder(ctx, payload.MovedID, payload.OverID)
	default:
		respondError(c, http.StatusBadRequest, "movedId and overId, or ids, are required")
		return
	}
	if err != nil {
		respondServiceError(c, err, "failed to reorder "+coll.Entity())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"changed": changed,
		"items":   coll.Snapshot(),
	})
}

func respondItem(c *gin.Context, status int, item interface{}, err error, fallback string) {
	if err != nil {
		respondServiceError(c, err, fallback)
		return
	}
	c.JSON(status, gin.H{"item": item})
}
