package middleware

import "github.com/gin-gonic/gin"

// APIVersionKey gin.Context 中保存接口版本标记的键
const APIVersionKey = "api_version"

// APIVersion 为路由组打上版本标记，Handler 据此执行版本开关
func APIVersion(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(APIVersionKey, version)
		c.Next()
	}
}
