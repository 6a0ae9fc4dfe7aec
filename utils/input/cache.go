package input

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

var errBadCache = errors.New("bad network cache")

const cachePackage = "trafficlight.scorer.cache.v1"

// cachePath 根据文档内容的SHA-256计算缓存文件路径
func cachePath(cacheDir string, raw []byte) string {
	sum := sha256.Sum256(raw)
	return filepath.Join(cacheDir, hex.EncodeToString(sum[:])+".network.pb")
}

// field 构造字段描述，typeName非空时为消息类型
func field(name string, num int32, repeated bool, typ descriptorpb.FieldDescriptorProto_Type, typeName string) *descriptorpb.FieldDescriptorProto {
	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	if repeated {
		label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	}
	f := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Label:  label.Enum(),
		Type:   typ.Enum(),
	}
	if typeName != "" {
		f.TypeName = proto.String("." + cachePackage + "." + typeName)
	}
	return f
}

// cacheSchema 构建与cache.proto一致的消息描述
func cacheSchema() protoreflect.FileDescriptor {
	const (
		i32 = descriptorpb.FieldDescriptorProto_TYPE_INT32
		str = descriptorpb.FieldDescriptorProto_TYPE_STRING
		msg = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
	)
	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("utils/input/cache.proto"),
		Package: proto.String(cachePackage),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Network"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("header", 1, false, msg, "Header"),
					field("streets", 2, true, msg, "Street"),
					field("car_paths", 3, true, msg, "CarPath"),
				},
			},
			{
				Name: proto.String("Header"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("duration", 1, false, i32, ""),
					field("intersections", 2, false, i32, ""),
					field("streets", 3, false, i32, ""),
					field("cars", 4, false, i32, ""),
					field("bonus", 5, false, i32, ""),
				},
			},
			{
				Name: proto.String("Street"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("start", 1, false, i32, ""),
					field("end", 2, false, i32, ""),
					field("name", 3, false, str, ""),
					field("length", 4, false, i32, ""),
				},
			},
			{
				Name: proto.String("CarPath"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("streets", 1, true, str, ""),
				},
			},
		},
	}
	file, err := protodesc.NewFile(fd, nil)
	if err != nil {
		log.Panicf("invalid network cache schema: %v", err)
	}
	return file
}

var (
	cacheMessages = cacheSchema().Messages()
	networkDesc   = cacheMessages.ByName("Network")
	headerDesc    = cacheMessages.ByName("Header")
	streetDesc    = cacheMessages.ByName("Street")
	carPathDesc   = cacheMessages.ByName("CarPath")
)

// setInt32 按字段名写入int32字段
func setInt32(m *dynamicpb.Message, name protoreflect.Name, v int32) {
	m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfInt32(v))
}

// getInt32 按字段名读取int32字段
func getInt32(m protoreflect.Message, name protoreflect.Name) int32 {
	return int32(m.Get(m.Descriptor().Fields().ByName(name)).Int())
}

// list 按字段名获取可修改的repeated字段
func list(m protoreflect.Message, name protoreflect.Name) protoreflect.List {
	return m.Mutable(m.Descriptor().Fields().ByName(name)).List()
}

// values 按字段名读取repeated字段
func values(m protoreflect.Message, name protoreflect.Name) protoreflect.List {
	return m.Get(m.Descriptor().Fields().ByName(name)).List()
}

// MarshalNetwork 将路网编码为protobuf，格式见cache.proto
// 说明：使用确定性编码，相同路网得到相同字节
func MarshalNetwork(n *Network) ([]byte, error) {
	h := dynamicpb.NewMessage(headerDesc)
	setInt32(h, "duration", n.Header.Duration)
	setInt32(h, "intersections", n.Header.Intersections)
	setInt32(h, "streets", n.Header.Streets)
	setInt32(h, "cars", n.Header.Cars)
	setInt32(h, "bonus", n.Header.Bonus)

	m := dynamicpb.NewMessage(networkDesc)
	m.Set(networkDesc.Fields().ByName("header"), protoreflect.ValueOfMessage(h))
	streets := list(m, "streets")
	for _, s := range n.Streets {
		pb := dynamicpb.NewMessage(streetDesc)
		setInt32(pb, "start", s.Start)
		setInt32(pb, "end", s.End)
		pb.Set(streetDesc.Fields().ByName("name"), protoreflect.ValueOfString(s.Name))
		setInt32(pb, "length", s.Length)
		streets.Append(protoreflect.ValueOfMessage(pb))
	}
	paths := list(m, "car_paths")
	for _, p := range n.CarPaths {
		pb := dynamicpb.NewMessage(carPathDesc)
		names := list(pb, "streets")
		for _, name := range p.Streets {
			names.Append(protoreflect.ValueOfString(name))
		}
		paths.Append(protoreflect.ValueOfMessage(pb))
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(m)
}

// UnmarshalNetwork 从protobuf解码路网
// 说明：解码后校验数量与首行一致，防止使用损坏的缓存
func UnmarshalNetwork(b []byte) (*Network, error) {
	m := dynamicpb.NewMessage(networkDesc)
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadCache, err)
	}
	n := &Network{}
	h := m.Get(networkDesc.Fields().ByName("header")).Message()
	n.Header = Header{
		Duration:      getInt32(h, "duration"),
		Intersections: getInt32(h, "intersections"),
		Streets:       getInt32(h, "streets"),
		Cars:          getInt32(h, "cars"),
		Bonus:         getInt32(h, "bonus"),
	}
	streets, paths := values(m, "streets"), values(m, "car_paths")
	if int(n.Header.Streets) != streets.Len() || int(n.Header.Cars) != paths.Len() {
		return nil, fmt.Errorf("%w: header declares %d streets and %d cars, got %d and %d",
			errBadCache, n.Header.Streets, n.Header.Cars, streets.Len(), paths.Len())
	}
	for i := 0; i < streets.Len(); i++ {
		pb := streets.Get(i).Message()
		n.Streets = append(n.Streets, Street{
			Start:  getInt32(pb, "start"),
			End:    getInt32(pb, "end"),
			Name:   pb.Get(streetDesc.Fields().ByName("name")).String(),
			Length: getInt32(pb, "length"),
		})
	}
	for i := 0; i < paths.Len(); i++ {
		names := values(paths.Get(i).Message(), "streets")
		p := CarPath{Streets: make([]string, 0, names.Len())}
		for j := 0; j < names.Len(); j++ {
			p.Streets = append(p.Streets, names.Get(j).String())
		}
		n.CarPaths = append(n.CarPaths, p)
	}
	return n, nil
}

// preCheckCache 预检查缓存目录
// 功能：验证缓存目录的有效性，决定是否启用缓存功能
// 参数：cacheDir-缓存目录路径
// 返回：true表示启用缓存，false表示禁用缓存
func preCheckCache(cacheDir string) bool {
	if cacheDir == "" {
		log.Debug("disable input cache")
		return false
	}
	if stat, err := os.Stat(cacheDir); err == nil && stat.IsDir() {
		log.Debugf("enable input cache at %s", cacheDir)
		return true
	}
	log.Errorf("disable input cache because invalid dir %s (not exist or file)", cacheDir)
	return false
}

// loadCache 尝试读取缓存，不存在或损坏时返回nil
func loadCache(path string) *Network {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	n, err := UnmarshalNetwork(b)
	if err != nil {
		log.Warnf("ignore network cache %s: %v", path, err)
		return nil
	}
	return n
}

// saveCache 写入缓存，失败只记录日志
func saveCache(path string, n *Network) {
	b, err := MarshalNetwork(n)
	if err != nil {
		log.Warnf("failed to encode network cache %s: %v", path, err)
		return
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		log.Warnf("failed to write network cache %s: %v", path, err)
	}
}
