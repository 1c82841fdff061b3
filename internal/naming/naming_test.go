package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relsynth/relsynth/internal/naming"
)

func TestGoIdent(t *testing.T) {
	assert.Equal(t, "TblUserEdge", naming.GoIdent("tbl_user_edge"))
	assert.Equal(t, "_123", naming.GoIdent("123"))
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "user_edges", naming.TableName("UserEdge"))
}
