package config

type UploadConfig struct {
	AllowedMimeTypes  []string
	AllowedExtensions []string
	MaxSizeMB         int64
}

// UploadContexts - правила для загружаемых файлов по контексту.
var UploadContexts = map[string]UploadConfig{
	"branch_import": {
		// xlsx - это zip-архив, xls - OLE2 контейнер (определяется как octet-stream)
		AllowedMimeTypes: []string{
			"application/zip",
			"application/octet-stream",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/vnd.ms-excel",
		},
		AllowedExtensions: []string{".xlsx", ".xls"},
		MaxSizeMB:         10,
	},
}
