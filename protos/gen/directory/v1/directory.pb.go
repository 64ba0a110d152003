// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: directory/v1/directory.proto

package directoryv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

// Exactly one of provider_id or user_id must be set.
type ProviderProfileRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	ProviderId    string                 `protobuf:"bytes,1,opt,name=provider_id,json=providerId,proto3" json:"provider_id,omitempty"`
	UserId        string                 `protobuf:"bytes,2,opt,name=user_id,json=userId,proto3" json:"user_id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ProviderProfileRequest) Reset() {
	*x = ProviderProfileRequest{}
	mi := &file_directory_v1_directory_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ProviderProfileRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ProviderProfileRequest) ProtoMessage() {}

func (x *ProviderProfileRequest) ProtoReflect() protoreflect.Message {
	mi := &file_directory_v1_directory_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ProviderProfileRequest.ProtoReflect.Descriptor instead.
func (*ProviderProfileRequest) Descriptor() ([]byte, []int) {
	return file_directory_v1_directory_proto_rawDescGZIP(), []int{0}
}

func (x *ProviderProfileRequest) GetProviderId() string {
	if x != nil {
		return x.ProviderId
	}
	return ""
}

func (x *ProviderProfileRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

type ProviderProfileResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	ProviderId    string                 `protobuf:"bytes,1,opt,name=provider_id,json=providerId,proto3" json:"provider_id,omitempty"`
	UserId        string                 `protobuf:"bytes,2,opt,name=user_id,json=userId,proto3" json:"user_id,omitempty"`
	DisplayName   string                 `protobuf:"bytes,3,opt,name=display_name,json=displayName,proto3" json:"display_name,omitempty"`
	Specialty     string                 `protobuf:"bytes,4,opt,name=specialty,proto3" json:"specialty,omitempty"`
	IsActive      bool                   `protobuf:"varint,5,opt,name=is_active,json=isActive,proto3" json:"is_active,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ProviderProfileResponse) Reset() {
	*x = ProviderProfileResponse{}
	mi := &file_directory_v1_directory_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ProviderProfileResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ProviderProfileResponse) ProtoMessage() {}

func (x *ProviderProfileResponse) ProtoReflect() protoreflect.Message {
	mi := &file_directory_v1_directory_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ProviderProfileResponse.ProtoReflect.Descriptor instead.
func (*ProviderProfileResponse) Descriptor() ([]byte, []int) {
	return file_directory_v1_directory_proto_rawDescGZIP(), []int{1}
}

func (x *ProviderProfileResponse) GetProviderId() string {
	if x != nil {
		return x.ProviderId
	}
	return ""
}

func (x *ProviderProfileResponse) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *ProviderProfileResponse) GetDisplayName() string {
	if x != nil {
		return x.DisplayName
	}
	return ""
}

func (x *ProviderProfileResponse) GetSpecialty() string {
	if x != nil {
		return x.Specialty
	}
	return ""
}

func (x *ProviderProfileResponse) GetIsActive() bool {
	if x != nil {
		return x.IsActive
	}
	return false
}

var File_directory_v1_directory_proto protoreflect.FileDescriptor

const file_directory_v1_directory_proto_rawDesc = "" +
	"\n" +
	"\x1cdirectory/v1/directory.proto\x12\fdirectory.v1\"R\n" +
	"\x16ProviderProfileRequest\x12\x1f\n" +
	"\vprovider_id\x18\x01 \x01(\tR\n" +
	"providerId\x12\x17\n" +
	"\auser_id\x18\x02 \x01(\tR\x06userId\"\xb1\x01\n" +
	"\x17ProviderProfileResponse\x12\x1f\n" +
	"\vprovider_id\x18\x01 \x01(\tR\n" +
	"providerId\x12\x17\n" +
	"\auser_id\x18\x02 \x01(\tR\x06userId\x12!\n" +
	"\fdisplay_name\x18\x03 \x01(\tR\vdisplayName\x12\x1c\n" +
	"\tspecialty\x18\x04 \x01(\tR\tspecialty\x12\x1b\n" +
	"\tis_active\x18\x05 \x01(\bR\bisActive2u\n" +
	"\x10DirectoryService\x12a\n" +
	"\x12GetProviderProfile\x12$.directory.v1.ProviderProfileRequest\x1a%.directory.v1.ProviderProfileResponseBEZCgithub.com/sofia-wellness/sofia/protos/gen/directory/v1;directoryv1b\x06proto3"

var (
	file_directory_v1_directory_proto_rawDescOnce sync.Once
	file_directory_v1_directory_proto_rawDescData []byte
)

func file_directory_v1_directory_proto_rawDescGZIP() []byte {
	file_directory_v1_directory_proto_rawDescOnce.Do(func() {
		file_directory_v1_directory_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_directory_v1_directory_proto_rawDesc), len(file_directory_v1_directory_proto_rawDesc)))
	})
	return file_directory_v1_directory_proto_rawDescData
}

var file_directory_v1_directory_proto_msgTypes = make([]protoimpl.MessageInfo, 2)
var file_directory_v1_directory_proto_goTypes = []any{
	(*ProviderProfileRequest)(nil),  // 0: directory.v1.ProviderProfileRequest
	(*ProviderProfileResponse)(nil), // 1: directory.v1.ProviderProfileResponse
}
var file_directory_v1_directory_proto_depIdxs = []int32{
	0, // 0: directory.v1.DirectoryService.GetProviderProfile:input_type -> directory.v1.ProviderProfileRequest
	1, // 1: directory.v1.DirectoryService.GetProviderProfile:output_type -> directory.v1.ProviderProfileResponse
	1, // [1:2] is the sub-list for method output_type
	0, // [0:1] is the sub-list for method input_type
	0, // [0:0] is the sub-list for extension type_name
	0, // [0:0] is the sub-list for extension extendee
	0, // [0:0] is the sub-list for field type_name
}

func init() { file_directory_v1_directory_proto_init() }
func file_directory_v1_directory_proto_init() {
	if File_directory_v1_directory_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_directory_v1_directory_proto_rawDesc), len(file_directory_v1_directory_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   2,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_directory_v1_directory_proto_goTypes,
		DependencyIndexes: file_directory_v1_directory_proto_depIdxs,
		MessageInfos:      file_directory_v1_directory_proto_msgTypes,
	}.Build()
	File_directory_v1_directory_proto = out.File
	file_directory_v1_directory_proto_goTypes = nil
	file_directory_v1_directory_proto_depIdxs = nil
}
