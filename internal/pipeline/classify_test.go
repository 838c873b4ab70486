package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/leadflow-cli/internal/model"
)

func TestClassifyColumn(t *testing.T) {
	tests := []struct {
		header string
		want   model.ColumnRole
	}{
		{"Name", model.RoleName},
		{"Full Name", model.RoleName},
		{"  Contact Name ", model.RoleName},
		{"person", model.RoleName},
		{"Email", model.RoleEmail},
		{"E-Mail Address", model.RoleEmail},
		{"Phone", model.RolePhone},
		{"Mobile Number", model.RolePhone},
		{"Tel", model.RolePhone},
		{"City", model.RoleCity},
		{"Town/District", model.RoleCity},
		{"Location", model.RoleCity},
		{"Update", model.RoleUpdate},
		{"Follow Up", model.RoleUpdate},
		{"Status", model.RoleUpdate},
		{"Remarks", model.RoleUpdate},
		{"Weekend Call", model.RoleUpdate},
		{"Call 1", model.RoleUpdate},
		{"1st Attempt", model.RoleUpdate},
		{"Second Try", model.RoleUpdate},
		{"Revenue", model.RoleOther},
		{"", model.RoleOther},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyColumn(tt.header), "header %q", tt.header)
		})
	}
}

// A bare "contact" header satisfies both the name and phone lists; the fixed
// precedence order resolves it to phone, while "contact name" stays a name.
func TestClassifyColumn_Precedence(t *testing.T) {
	assert.Equal(t, model.RolePhone, ClassifyColumn("Contact"))
	assert.Equal(t, model.RoleName, ClassifyColumn("Contact Name"))
	// "status call" matches update keywords only after name/email/phone/city
	// fall through.
	assert.Equal(t, model.RoleUpdate, ClassifyColumn("status call"))
}

func TestClassifyColumns_PreservesTableOrder(t *testing.T) {
	byRole := ClassifyColumns([]string{"Name", "Full Name", "Phone", "Update 1", "Update 2", "Notes"})

	assert.Equal(t, []string{"Name", "Full Name"}, byRole[model.RoleName])
	assert.Equal(t, []string{"Phone"}, byRole[model.RolePhone])
	assert.Equal(t, []string{"Update 1", "Update 2", "Notes"}, byRole[model.RoleUpdate])
}
