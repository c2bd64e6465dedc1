package models

// Asset is one entry of the environment inventory used for personalized
// feed matching.
type Asset struct {
	AssetID        string `yaml:"asset_id" json:"asset_id"`
	Hostname       string `yaml:"hostname" json:"hostname"`
	IPAddress      string `yaml:"ip_address" json:"ip_address"`
	CPEString      string `yaml:"cpe" json:"cpe"`
	AssetType      string `yaml:"type" json:"type"`
	InternetFacing bool   `yaml:"internet_facing" json:"internet_facing"`
}
