package department

type Department struct {
	ID          int64        `gorm:"primaryKey"`
	Name        string       `gorm:"column:name;size:50;uniqueIndex;not null"`
	Permissions []Permission `gorm:"many2many:department_permission;joinForeignKey:DepartmentID;joinReferences:PermissionID"`
}

func (Department) TableName() string {
	return "departments"
}

type Permission struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;size:50;uniqueIndex;not null"`
}

func (Permission) TableName() string {
	return "permissions"
}

// PermissionNames flattens the attached permissions.
func (d *Department) PermissionNames() []string {
	names := make([]string, 0, len(d.Permissions))
	for _, p := range d.Permissions {
		names = append(names, p.Name)
	}
	return names
}
