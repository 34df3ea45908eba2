package api

import (
	"io"
	"log"
	"net/http"
	"os"
	"path"

	"github.com/chenBenjamin97/team-assigner/pkg/utils"
	"github.com/chenBenjamin97/team-assigner/pkg/video"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// tagVideo starts tagging of an uploaded video, replaced in tests
var tagVideo = func(name string) {
	go video.Tag(name)
}

func SetRouter() *gin.Engine {
	r := gin.Default()

	// serve html pages to client
	r.Static("/client", viper.GetString("frontend.static-files-path"))
	r.StaticFile("/", viper.GetString("frontend.static-files-path")+"home_page/dist/index.html")

	apiRoutes := r.Group("/api")

	apiRoutes.GET("/ReadyVideosNames", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.ready")); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/UserUploadsVideosNames", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.source")); err != nil {
			ctx.Status(http.StatusInternalServerError)
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	apiRoutes.GET("/Play", func(ctx *gin.Context) {
		videoName := ctx.Request.URL.Query().Get("name")
		if videoName == "" {
			ctx.Status(http.StatusNotAcceptable) // missing url parameter
			return
		}

		analyzed := ctx.Request.URL.Query().Get("analyzed")
		if analyzed != "true" && analyzed != "false" {
			ctx.Status(http.StatusNotAcceptable) // missing url parameter
			return
		}

		var videoPath string
		if analyzed == "true" {
			videoPath = path.Join(viper.GetString("directory.ready"), videoName+"."+viper.GetString("video.prod_format"))
		} else {
			videoPath = path.Join(viper.GetString("directory.source"), videoName+"."+viper.GetString("video.prod_format"))
		}

		if _, err := os.Stat(videoPath); err != nil {
			if os.IsNotExist(err) {
				ctx.Status(http.StatusNotFound)
				return
			} else {
				ctx.Status(http.StatusInternalServerError)
				return
			}
		}

		ctx.Header("Content-Type", "video/mp4")
		http.ServeFile(ctx.Writer, ctx.Request, videoPath)
	})

	// Teams returns the team colors and player assignments of a tagged video.
	// 202 while the video is still being tagged, 404 if it never was.
	// The name may omit the extension as in Play, 'video.prod_format' is assumed then.
	apiRoutes.GET("/Teams", func(ctx *gin.Context) {
		videoName := ctx.Request.URL.Query().Get("name")
		if videoName == "" {
			ctx.Status(http.StatusNotAcceptable) // missing url parameter
			return
		}
		videoName = path.Base(videoName)
		if path.Ext(videoName) == "" {
			videoName += "." + viper.GetString("video.prod_format")
		}

		summary, state := video.GetSummary(videoName)
		switch state {
		case video.Tagged:
			ctx.JSON(http.StatusOK, summary)
			return
		case video.Tagging:
			ctx.Status(http.StatusAccepted)
			return
		}

		// tagged by an earlier run of the server
		summary, err := video.ReadSummary(path.Join(viper.GetString("directory.ready"), videoName+utils.SummaryExtension))
		if err != nil {
			if os.IsNotExist(err) {
				ctx.Status(http.StatusNotFound)
			} else {
				log.Printf("api/Teams: Could not read summary of '%s', got '%v'", videoName, err)
				ctx.Status(http.StatusInternalServerError)
			}
			return
		}

		ctx.JSON(http.StatusOK, summary)
	})

	apiRoutes.POST("/Upload", func(ctx *gin.Context) {
		// ctx.Request.ParseMultipartForm(15 << 20) // limit file size at body to 15MB
		file, fHeader, err := ctx.Request.FormFile("video")
		if err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		defer file.Close()

		videoName := path.Base(fHeader.Filename)

		if existNames, err := utils.ListDir(viper.GetString("directory.source")); err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		} else {
			if utils.InSlice(videoName, existNames) {
				ctx.Status(http.StatusNotAcceptable)
				return
			}
		}

		log.Printf("api/Upload: Recived new file: name - '%s', size - %v Bytes", fHeader.Filename, fHeader.Size)

		fileBytes, err := io.ReadAll(file)
		if err != nil {
			log.Printf("api/Upload: Could not read request's body, got '%v'", err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		srcFilePath := path.Join(viper.GetString("directory.source"), videoName)

		if err = os.WriteFile(srcFilePath, fileBytes, 0444); err != nil {
			log.Printf("api/Upload: Could not write '%s' file, got '%v'", srcFilePath, err)
			ctx.Status(http.StatusInternalServerError)
			return
		}

		tagVideo(videoName)
		ctx.Status(http.StatusAccepted)
	})

	return r
}
