package types

import (
	"fmt"
	"strings"
)

type ParsedImage struct {
	OriginalImage  string
	Registry       string
	Namespace      string
	Repository     string
	FullRepository string
	Tag            string
	Digest         string
}

func ParseImageName(imageName string) *ParsedImage {
	parsed := &ParsedImage{
		OriginalImage: imageName,
		Tag:           "latest",
	}

	workingImage := imageName

	if idx := strings.Index(workingImage, "@"); idx != -1 {
		parsed.Digest = workingImage[idx+1:]
		workingImage = workingImage[:idx]
	}

	// A tag fica depois do último ':' que vem depois da última '/'.
	// Assim "registry:5000/app" não perde a porta.
	if idx := strings.LastIndex(workingImage, ":"); idx != -1 && idx > strings.LastIndex(workingImage, "/") {
		parsed.Tag = workingImage[idx+1:]
		workingImage = workingImage[:idx]
	}

	parts := strings.Split(workingImage, "/")

	switch len(parts) {
	case 1:
		parsed.Registry = "docker.io"
		parsed.Namespace = "library"
		parsed.Repository = parts[0]
		parsed.FullRepository = fmt.Sprintf("library/%s", parts[0])

	case 2:
		if strings.Contains(parts[0], ".") || strings.Contains(parts[0], ":") {
			parsed.Registry = parts[0]
			parsed.Namespace = ""
			parsed.Repository = parts[1]
			parsed.FullRepository = parts[1]
		} else {
			parsed.Registry = "docker.io"
			parsed.Namespace = parts[0]
			parsed.Repository = parts[1]
			parsed.FullRepository = fmt.Sprintf("%s/%s", parts[0], parts[1])
		}

	case 3:
		parsed.Registry = parts[0]
		parsed.Namespace = parts[1]
		parsed.Repository = parts[2]
		parsed.FullRepository = fmt.Sprintf("%s/%s", parts[1], parts[2])

	default:
		parsed.Registry = parts[0]
		parsed.Repository = parts[len(parts)-1]
		parsed.Namespace = strings.Join(parts[1:len(parts)-1], "/")
		parsed.FullRepository = strings.Join(parts[1:], "/")
	}

	if parsed.Registry == "index.docker.io" || parsed.Registry == "registry-1.docker.io" {
		parsed.Registry = "docker.io"
	}

	return parsed
}
