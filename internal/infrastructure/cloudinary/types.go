package cloudinary

// Folder 子文件夹描述
type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FoldersResponse /folders/:path 响应
type FoldersResponse struct {
	Folders    []Folder `json:"folders"`
	NextCursor string   `json:"next_cursor,omitempty"`
	TotalCount int      `json:"total_count"`
}

// ResourcesRequest /resources/image 请求参数
type ResourcesRequest struct {
	MaxResults int
	NextCursor string
	// Prefix 非空时按public_id前缀过滤,需要同时指定type=upload
	Prefix string
}

// Resource 资源项,只保留用到的字段
type Resource struct {
	PublicID     string `json:"public_id"`
	Folder       string `json:"folder"`
	AssetFolder  string `json:"asset_folder,omitempty"`
	Format       string `json:"format"`
	ResourceType string `json:"resource_type"`
	SecureURL    string `json:"secure_url"`
	URL          string `json:"url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Bytes        int64  `json:"bytes"`
	CreatedAt    string `json:"created_at"`
}

// ResourcesResponse /resources/image 响应
type ResourcesResponse struct {
	Resources  []Resource `json:"resources"`
	NextCursor string     `json:"next_cursor,omitempty"`
}
