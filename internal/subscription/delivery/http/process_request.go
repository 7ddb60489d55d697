package http

import "github.com/gin-gonic/gin"

func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	err := c.ShouldBindQuery(&req)
	return req, err
}

func (h *handler) processDetailReq(c *gin.Context) (detailReq, error) {
	var req detailReq
	err := c.ShouldBindQuery(&req)
	return req, err
}

func (h *handler) processLinkReq(c *gin.Context) (linkReq, error) {
	var req linkReq
	err := c.ShouldBindJSON(&req)
	return req, err
}

func (h *handler) processSetColorsReq(c *gin.Context) (setColorsReq, error) {
	var req setColorsReq
	err := c.ShouldBindJSON(&req)
	return req, err
}
