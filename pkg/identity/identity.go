package identity

import (
	"os"

	"infotainment-agent/pkg/file"
)

// Identity holds the vehicle's unique identifier and metadata.
type Identity struct {
	ID   string `json:"vehicle_id,omitempty"`
	VIN  string `json:"vin,omitempty"`
	Name string `json:"vehicle_name,omitempty"`
}

// VehicleInfoInterface defines methods for managing the vehicle identity.
type VehicleInfoInterface interface {
	LoadVehicleInfo() error
	SaveVehicleID(vehicleID string) error
	GetVehicleID() string
	GetIdentity() *Identity
}

// VehicleInfo manages the vehicle identity and its backing file.
type VehicleInfo struct {
	VehicleInfoFile string
	Identity        Identity
	fileOps         file.FileOperations
}

// NewVehicleInfo initializes a new VehicleInfo instance.
func NewVehicleInfo(filePath string, fileOps file.FileOperations) VehicleInfoInterface {
	return &VehicleInfo{
		VehicleInfoFile: filePath,
		fileOps:         fileOps,
	}
}

// LoadVehicleInfo reads the vehicle information file into the Identity field.
// A missing file leaves the identity empty.
func (v *VehicleInfo) LoadVehicleInfo() error {
	err := v.fileOps.ReadJsonFile(v.VehicleInfoFile, &v.Identity)
	if err != nil {
		if os.IsNotExist(err) {
			v.Identity = Identity{}
			return nil
		}
		return err
	}
	return nil
}

// GetIdentity returns the current vehicle Identity.
func (v *VehicleInfo) GetIdentity() *Identity {
	return &v.Identity
}

// GetVehicleID returns the current vehicle ID.
func (v *VehicleInfo) GetVehicleID() string {
	return v.Identity.ID
}

// SaveVehicleID updates the vehicle ID and writes it back to the file.
func (v *VehicleInfo) SaveVehicleID(vehicleID string) error {
	v.Identity.ID = vehicleID
	return v.fileOps.WriteJsonFile(v.VehicleInfoFile, v.Identity)
}
